package llm

// Prompt templates rendered through langchaingo's Go-template format.

const tailoringPromptTemplate = `You are an expert resume writer. Rewrite the resume below so it is tailored
to the given job description. Keep every claim truthful to the original resume:
reorder, rephrase and emphasize matching experience, skills and keywords, but
never invent employers, titles, dates or qualifications.

Return only the full tailored resume as plain text, with no commentary before
or after it.

Job description:
{{.job_description}}

Original resume:
{{.resume_content}}`

const latexPromptTemplate = `You are an expert at typesetting resumes in LaTeX. Convert the resume content
below into a complete, compilable LaTeX document. Use the provided template as
the structural and stylistic base: keep its preamble, packages and section
layout, and fill in the candidate's information. The content may be plain text
or a JSON object; map its fields into the template sections sensibly. Escape
LaTeX special characters appearing in the content.

Return only LaTeX source. Do not wrap it in markdown code fences.

Template:
{{.latex_template}}

Resume content:
{{.resume_content}}`

// latexTemplate is the fixed resume layout handed to the conversion chain.
const latexTemplate = `\documentclass[letterpaper,11pt]{article}

\usepackage{latexsym}
\usepackage[empty]{fullpage}
\usepackage{titlesec}
\usepackage[usenames,dvipsnames]{color}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}
\usepackage{fancyhdr}
\usepackage[english]{babel}
\usepackage{tabularx}

\pagestyle{fancy}
\fancyhf{}
\renewcommand{\headrulewidth}{0pt}
\renewcommand{\footrulewidth}{0pt}

\addtolength{\oddsidemargin}{-0.5in}
\addtolength{\evensidemargin}{-0.5in}
\addtolength{\textwidth}{1in}
\addtolength{\topmargin}{-.5in}
\addtolength{\textheight}{1.0in}

\urlstyle{same}
\raggedbottom
\raggedright
\setlength{\tabcolsep}{0in}

\titleformat{\section}{\vspace{-4pt}\scshape\raggedright\large}{}{0em}{}[\color{black}\titlerule \vspace{-5pt}]

\begin{document}

\begin{center}
    {\Huge \scshape Full Name} \\ \vspace{1pt}
    \small phone $|$ \href{mailto:email}{email} $|$
    \href{linkedin}{LinkedIn} $|$ \href{github}{GitHub}
\end{center}

\section{Education}
% institution, degree, dates, location

\section{Experience}
% organization, title, dates, bullet points

\section{Projects}
% name, technologies, dates, bullet points

\section{Technical Skills}
% languages, frameworks, developer tools, libraries

\end{document}`
